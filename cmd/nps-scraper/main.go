package main

import cmd "github.com/rohmanhakim/nps-scraper/internal/cli"

func main() {
	cmd.Execute()
}
