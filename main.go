package main

import "github.com/chaos-io/matting/cmd"

func main() {
	cmd.Execute()
}
