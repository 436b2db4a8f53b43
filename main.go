package main

import (
	"fmt"

	"bitwise74/voice-api/api"
	"bitwise74/voice-api/config"
	"bitwise74/voice-api/db"
	"bitwise74/voice-api/elevenlabs"
	"bitwise74/voice-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	conn, err := db.New()
	if err != nil {
		panic(err)
	}

	store, err := storage.New()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter(conn, store, elevenlabs.New())
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting")

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
