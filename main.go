package main

import (
	"fmt"

	"radialmenu/ui"
)

func main() {
	if err := ui.RunRadialMenu(); err != nil {
		fmt.Println(err)
	}
}
