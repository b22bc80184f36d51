package api

import "go.uber.org/zap"

func errField(err error) zap.Field   { return zap.Error(err) }
func intField(k string, v int) zap.Field { return zap.Int(k, v) }
func strField(k, v string) zap.Field { return zap.String(k, v) }
