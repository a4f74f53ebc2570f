package cli

import (
	"fmt"
	"io/fs"

	"github.com/mholt/archives"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command, a debugging aid that lists
// the contents of a downloaded archive artifact.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the contents of a downloaded archive artifact",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	fsys, err := archives.FileSystem(cmd.Context(), args[0], nil)
	if err != nil {
		return fmt.Errorf("failed to open %s as archive: %w", args[0], err)
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." {
				fmt.Printf("%s/\n", path)
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d\n", path, info.Size())
		return nil
	})
}
