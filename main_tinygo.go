//go:build tinygo

package main

import (
	"modcalc/app"
	"modcalc/hal"
)

func main() {
	app.Run(hal.New())
}
