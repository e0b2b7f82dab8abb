// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/print.go
// Summary: Sideways frame tree dump for debugging.

package layout

import (
	"log"
	"strings"
)

func printFrame(fr *Frame, indent int) {
	if fr == nil {
		return
	}
	printFrame(fr.right, indent+4)

	pad := strings.Repeat(" ", indent)
	if fr.right != nil {
		log.Printf("%s /", pad)
	}
	switch fr.split {
	case SplitHorizontal:
		log.Printf("%sH rel=%.2f", pad, fr.relSize)
	case SplitVertical:
		log.Printf("%sV rel=%.2f", pad, fr.relSize)
	default:
		log.Printf("%sleaf rel=%.2f views=%v active=%d", pad, fr.relSize, fr.views, fr.activeView)
	}
	if fr.left != nil {
		log.Printf("%s \\", pad)
	}

	printFrame(fr.left, indent+4)
}

// PrintTree logs the frame tree sideways, right subtree on top.
func PrintTree(root *Frame) {
	log.Printf("current frame tree (printed sideways):")
	printFrame(root, 0)
}
