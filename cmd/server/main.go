package main

import "tikoncha/internal/app"

// @title           Tikoncha API
// @version         1.0
// @description     Бэкенд платформы родительского контроля: регистрация по SMS, справочник школ, устройства, политики блокировки и журнал активности.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
