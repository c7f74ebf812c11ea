// filepath: internal/cli/preview.go
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/storage"
	"github.com/spf13/cobra"
)

// previewOptions holds the flags of the preview command.
type previewOptions struct {
	File       string
	Owner      string
	Out        string
	Width      int
	Height     int
	KeepAspect bool
	Download   bool
	Base64     bool
}

var previewOpts = &previewOptions{}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the preview of one gallery file",
	Long: `Runs a single file through the preview pipeline and writes the result to a file or stdout.
Files that cannot be previewed produce their media type icon and a non-zero exit code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd.Context(), cmd.OutOrStdout(), previewOpts)
	},
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewOpts.File, "file", "", "File path relative to the owner's gallery.")
	f.StringVar(&previewOpts.Owner, "owner", "", "Gallery owner (defaults to preview.default_owner).")
	f.StringVar(&previewOpts.Out, "out", "-", "Output path, '-' writes to stdout.")
	f.IntVar(&previewOpts.Width, "width", preview.DefaultSquareThumbnailWidth, "Maximum width, 0 leaves it unbounded.")
	f.IntVar(&previewOpts.Height, "height", preview.DefaultSquareThumbnailWidth, "Maximum height, 0 leaves it unbounded.")
	f.BoolVar(&previewOpts.KeepAspect, "keep-aspect", true, "Keep the aspect ratio.")
	f.BoolVar(&previewOpts.Download, "download", false, "Write the original file instead of a preview.")
	f.BoolVar(&previewOpts.Base64, "base64", false, "Write the result base64 encoded.")
	_ = previewCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(previewCmd)
}

// buildRequest turns the command flags into a preview request.
func (o *previewOptions) buildRequest() (preview.Request, error) {
	if o.Download {
		return preview.DownloadRequest().WithEncodeAsText(o.Base64), nil
	}
	req, err := preview.NewRequest(o.Width, o.Height)
	if err != nil {
		return preview.Request{}, err
	}
	return req.WithKeepAspect(o.KeepAspect).WithEncodeAsText(o.Base64), nil
}

func runPreview(ctx context.Context, stdout io.Writer, opts *previewOptions) error {
	req, err := opts.buildRequest()
	if err != nil {
		return err
	}

	owner := opts.Owner
	if owner == "" {
		owner = cfg.Preview.DefaultOwner
	}

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.Previews.Resolve(ctx, owner, opts.File, req)
	if err != nil {
		return err
	}

	var data []byte
	if res.Encoded {
		data = []byte(res.Text + "\n")
	} else if data, err = res.Binary(); err != nil {
		return err
	}

	if err := writeOutput(stdout, opts.Out, data); err != nil {
		return err
	}

	logging.Log.Infof("%s: %s, %s (%s)", res.Path, res.Kind, res.MediaType, res.Status)
	if res.Status != preview.StatusOK {
		return fmt.Errorf("no preview available for %s", res.Path)
	}
	return nil
}

func writeOutput(stdout io.Writer, out string, data []byte) error {
	if out == "" || out == "-" {
		_, err := stdout.Write(data)
		return err
	}
	_, err := storage.SaveFile(bytes.NewReader(data), out)
	return err
}
