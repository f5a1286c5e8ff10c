package main

import "hrms/internal/app/cli"

func main() {
	cli.Execute()
}
