package config

// SafeErrorMessage em modo release devolve a mensagem genérica para não expor
// detalhes internos; fora dele devolve o próprio erro.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
