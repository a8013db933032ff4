package cmd

import (
	"fmt"
	"os"

	"github.com/tonhe/zgraph/internal/render"
)

func paletteCmd() {
	fmt.Print(render.Palette(render.NewStyles(os.Stdout)))
}
