package main

import "panal/internal/app"

// @title           Panal API
// @version         1.0
// @description     API de gestión colaborativa de proyectos y tareas.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
