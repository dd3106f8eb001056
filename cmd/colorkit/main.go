package main

import "github.com/wudi/colorkit/internal/cmd"

func main() {
	cmd.Execute()
}
