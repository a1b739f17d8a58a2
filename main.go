package main

import "github.com/atikulmunna/gdkit/internal/cmd"

func main() {
	cmd.Execute()
}
