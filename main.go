// @title Atomic Sensei API
// @version 1.0
// @description Personalised learning backend: AI roadmaps, lessons, quizzes and spaced reminders.

// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"atomic_sensei_backend/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
