package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// errBadScript is wrapped by every input script parse error.
var errBadScript = errors.New("bad input script")

// scriptActions maps script letters to actions.
var scriptActions = map[rune]core.Action{
	'L': core.ActionLeft,
	'R': core.ActionRight,
	'J': core.ActionJump,
	'F': core.ActionFire,
	'P': core.ActionPause,
}

// parseScript expands an input script into one frame per tick.
//
// A script is a comma separated list of steps. Each step is a set of action
// letters (L left, R right, J jump, F fire, P pause) or "." for an idle
// tick, optionally followed by "*N" to repeat it N times:
//
//	R*60,RJ,R*30,.*10
//
// At most limit frames are returned; steps past the limit are still
// checked for errors.
func parseScript(script string, limit int) ([]core.InputFrame, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var frames []core.InputFrame
	for i, token := range strings.Split(script, ",") {
		token = strings.TrimSpace(token)
		keys, count := token, 1

		if k, n, ok := strings.Cut(token, "*"); ok {
			c, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil || c < 1 {
				return nil, fmt.Errorf("%w: step %d %q: repeat count must be a positive integer", errBadScript, i+1, token)
			}
			keys, count = strings.TrimSpace(k), c
		}
		if keys == "" {
			return nil, fmt.Errorf("%w: step %d is empty", errBadScript, i+1)
		}

		frame := core.NewInputFrame()
		if keys != "." {
			for _, r := range strings.ToUpper(keys) {
				action, ok := scriptActions[r]
				if !ok {
					return nil, fmt.Errorf("%w: step %d %q: unknown action %q", errBadScript, i+1, token, r)
				}
				frame.Set(action)
			}
		}

		for range min(count, limit-len(frames)) {
			frames = append(frames, frame)
		}
	}
	return frames, nil
}
