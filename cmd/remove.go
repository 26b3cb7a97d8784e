package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/chaos-io/matting/imagedata"
	"github.com/chaos-io/matting/rembg"
	"github.com/chaos-io/matting/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	removeConcurrency int
	removeDataURI     bool
)

type removeResult struct {
	Source string `json:"source"`
	imagedata.ImageResult
}

var removeCmd = &cobra.Command{
	Use:     "remove <image>...",
	Aliases: []string{"matting-image"},
	Short:   "Remove the background of one or more images",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runRemove(cmd, args)
	},
}

func init() {
	removeCmd.Flags().StringP("out", "o", "", "Directory to save results into (env: MATTING_REMOVEBG_SAVE_DIR)")
	removeCmd.Flags().String("size", "", "remove.bg output size: auto, preview, full ...")
	removeCmd.Flags().IntVarP(&removeConcurrency, "concurrency", "j", 2, "Number of images processed in parallel")
	removeCmd.Flags().BoolVar(&removeDataURI, "data-uri", false, "Include the data URI in the printed result")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, sources []string) error {
	defer util.Trace("remove backgrounds")()

	if cfg.RemoveBG.APIKey == "" {
		return errors.New("api key is required (--api-key or MATTING_REMOVEBG_API_KEY)")
	}
	saveDir := cfg.RemoveBG.SaveDir
	if saveDir == "" {
		return errors.New("output directory is required (--out or MATTING_REMOVEBG_SAVE_DIR)")
	}
	if err := util.EnsureDir(saveDir); err != nil {
		return err
	}
	if removeConcurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", removeConcurrency)
	}

	remover := newRemoveBG()
	results := make([]removeResult, len(sources))

	if len(sources) == 1 {
		// 单张图片显示上传字节数
		bar := progressbar.NewOptions64(-1,
			progressbar.OptionSetDescription("Uploading"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		res, err := removeOne(cmd.Context(), remover, sources[0], saveDir, bar)
		_ = bar.Finish()
		if err != nil {
			return err
		}
		results[0] = res
	} else {
		bar := progressbar.NewOptions(len(sources),
			progressbar.OptionSetDescription("Removing backgrounds"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)

		var mu sync.Mutex
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(removeConcurrency)
		for i, src := range sources {
			g.Go(func() error {
				res, err := removeOne(ctx, remover, src, saveDir, nil)
				if err != nil {
					return fmt.Errorf("%s: %w", src, err)
				}
				results[i] = res
				mu.Lock()
				_ = bar.Add(1)
				mu.Unlock()
				return nil
			})
		}
		err := g.Wait()
		_ = bar.Finish()
		if err != nil {
			return err
		}
	}

	return printJSON(cmd.OutOrStdout(), results)
}

func removeOne(ctx context.Context, remover rembg.Remover, src, saveDir string, progress *progressbar.ProgressBar) (removeResult, error) {
	req := rembg.Request{
		SourcePath: src,
		SaveDir:    saveDir,
		APIKey:     cfg.RemoveBG.APIKey,
	}
	if progress != nil {
		req.UploadProgress = progress
	}

	res, err := remover.Remove(ctx, req)
	if err != nil {
		return removeResult{}, err
	}
	if !removeDataURI {
		res.ImageDataURI = ""
	}
	return removeResult{Source: src, ImageResult: res}, nil
}
