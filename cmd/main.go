package main

import (
	"github.com/corray333/backend-labs/marketing/internal/app"
	"github.com/corray333/backend-labs/marketing/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
