package main

import "github.com/serhat-dirik/univchart/internal/cmd"

func main() {
	cmd.Execute()
}
