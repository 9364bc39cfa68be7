package main

import "archblog/commands"

// @title Architecture Blog API
// @version 1.0
// @description Backend for an architecture firm's blog: moderated guest posts, comments, newsletter and image uploads.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @description "Bearer" followed by the session token. The admin_session cookie is accepted as well.

func main() {
	commands.Execute()
}
