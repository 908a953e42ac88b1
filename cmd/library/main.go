package main

import (
	"errors"
	"io/fs"
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-lending/library/app"
	"github.com/Astemirdum/library-lending/library/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.InfoLevel),
		config.WithReadTimeout(30*time.Second),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
