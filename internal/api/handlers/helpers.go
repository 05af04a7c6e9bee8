package handlers

import (
	"errors"
	"net/http"
	"reflect"

	"myfintrack/pkg/utils"
)

// UserIDFromRequest pulls the authenticated owner id set by the JWT
// middleware. JWT numeric claims decode as float64.
func UserIDFromRequest(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}

func CheckBlankFields(value interface{}) error {
	val := reflect.ValueOf(value)
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.String && field.String() == "" {
			return utils.ErrorHandler(errors.New("all fields are required"), "all fields are required")
		}
	}
	return nil
}
