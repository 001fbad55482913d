package main

import (
	"github.com/TaoufikZa/watami-mvp/internal/app"
	"github.com/TaoufikZa/watami-mvp/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
