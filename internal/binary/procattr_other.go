//go:build !windows

package binary

import "os/exec"

func setProcAttr(*exec.Cmd, bool) {}
