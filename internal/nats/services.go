package nats

import (
	"chatterly/internal/core"

	"github.com/zhulik/pal"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide(&NATS{}),
		pal.Provide[core.SessionStore](&SessionStore{}),
	)
}
