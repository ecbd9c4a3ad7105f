//go:build !(tinygo && bootdebug)

package app

import "modcalc/hal"

func bootScreen(hal.HAL, string) {}
