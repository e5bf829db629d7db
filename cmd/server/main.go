package main

import "github.com/vaaltic/crm/internal/app"

// @title        Vaaltic CRM API
// @version      1.0
// @description  Multi-tenant CRM backend: leads, contacts, deals with ownership-scoped access.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	app.Run()
}
