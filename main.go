package main

import "i18n-pipeline/internal/cli"

func main() {
	cli.Execute()
}
