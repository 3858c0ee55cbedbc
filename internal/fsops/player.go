package fsops

import (
	"errors"
	"fmt"
	"os/exec"
)

// LaunchPlayer spawns the external viewer for videoPath and detaches. The
// command is the configured player with the video path appended. Failure to
// start is reported to the caller; the player's own exit status is not.
func LaunchPlayer(command []string, videoPath string) error {
	if len(command) == 0 {
		return errors.New("no player command configured")
	}

	args := make([]string, 0, len(command))
	args = append(args, command[1:]...)
	args = append(args, videoPath)

	cmd := exec.Command(command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", command[0], err)
	}
	// Reap the child once it exits so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
