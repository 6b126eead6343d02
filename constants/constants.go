package constants

const (
	LogPrefixFmt = "%-17s "

	EnvAddress = "CLIENTAPI_ADDRESS"
	EnvKeyID   = "CLIENTAPI_KEY"
	EnvSecret  = "CLIENTAPI_SECRET"
)
