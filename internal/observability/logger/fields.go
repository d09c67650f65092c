package logger

import (
	"time"

	"go.uber.org/zap"
)

// ---------- HTTP ----------

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// ---------- Dominio ----------

// ClientID crea un campo con el id del client (tabla client).
func ClientID(v int64) zap.Field { return zap.Int64("client_id", v) }

// Phone crea un campo con el número de teléfono.
func Phone(v string) zap.Field { return zap.String("phone_num", v) }

// Column indica la columna afectada en updates/búsquedas dinámicas.
func Column(v string) zap.Field { return zap.String("column", v) }

// Affected cantidad de filas afectadas por una sentencia.
func Affected(v int64) zap.Field { return zap.Int64("rows_affected", v) }

// ---------- Genéricos ----------

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Count(v int) zap.Field        { return zap.Int("count", v) }

// Err crea un campo de error; nil se omite.
func Err(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.Error(err)
}

func String(key, v string) zap.Field { return zap.String(key, v) }
func Any(key string, v any) zap.Field { return zap.Any(key, v) }
