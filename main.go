package main

import "github.com/hmans/crudql/cmd"

func main() {
	cmd.Execute()
}
