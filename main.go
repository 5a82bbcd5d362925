package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/nikogura/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
