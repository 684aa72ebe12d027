//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Isolate makes cmd the leader of a new process group. Call it before Start.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillGroup sends SIGKILL to the process group led by pid.
func KillGroup(pid int) error {
	return signalGroup(pid, syscall.SIGKILL)
}

// SuspendGroup stops the process group led by pid with SIGSTOP.
func SuspendGroup(pid int) error {
	return signalGroup(pid, syscall.SIGSTOP)
}

// ResumeGroup continues a suspended process group with SIGCONT.
func ResumeGroup(pid int) error {
	return signalGroup(pid, syscall.SIGCONT)
}

func signalGroup(pid int, sig syscall.Signal) error {
	// pid 0 and negative pids address the caller's own group.
	if pid <= 0 {
		return syscall.ESRCH
	}
	return syscall.Kill(-pid, sig)
}
