package main

import "github.com/ogulcanaydogan/vitals-guardian/internal/cli"

func main() {
	cli.Execute()
}
