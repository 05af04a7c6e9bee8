package main

import (
	"crypto/tls"
	"fmt"
	"log"
	mw "myfintrack/internal/api/middlewares"
	"myfintrack/internal/api/routers"
	"myfintrack/internal/repositories/seed"
	"myfintrack/internal/repositories/sqlconnect"
	"myfintrack/pkg/utils"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		return
	}

	utils.InitLogger()

	err = sqlconnect.ConnectDb()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seed.Run(sqlconnect.DB); err != nil {
			utils.Logger.Fatal("demo data seed failed: ", err)
		}
	}

	port := os.Getenv("SERVER_PORT")

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	router := routers.MainRouter()
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/users/signup", "/users/login")

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
	}

	fmt.Println("Server is running on port", port)

	if cert != "" && key != "" {
		server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}

}
