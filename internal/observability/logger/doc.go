// Package logger provee un logger Zap singleton con scoping por contexto.
//
// Inicialización (una vez en main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// En el store o en handlers:
//
//	log := logger.From(ctx).With(logger.Layer("store"), logger.Op("AddPhone"))
//	log.Debug("phone inserted", logger.ClientID(id), logger.Phone(num))
//
// Con Env "test" el logger descarta todo, útil en tests.
package logger
