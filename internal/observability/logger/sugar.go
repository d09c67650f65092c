package logger

import "go.uber.org/zap"

// S retorna el SugaredLogger del singleton, para salidas printf-style del CLI.
//
//	logger.S().Infof("client %d created", id)
func S() *zap.SugaredLogger {
	return L().Sugar()
}
