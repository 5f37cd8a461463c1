package handler

import (
	"friendlink/internal/app/friend"
	"friendlink/internal/configs"
)

// AppDeps bundles the dependencies shared by all handlers.
type AppDeps struct {
	Broker *friend.Broker
	Config *configs.AppConfig
}
