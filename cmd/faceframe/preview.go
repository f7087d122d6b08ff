package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faceframebeauty/faceframe"
	"github.com/faceframebeauty/faceframe/content"
)

type previewFlags struct {
	before, after string
	style         string
	initial       float64
	noPreview     bool
	scenario      string
	exit          bool
	debug         bool
}

func newPreviewCmd(a *app) *cobra.Command {
	var f previewFlags
	cmd := &cobra.Command{
		Use:   "preview [gallery-id]",
		Short: "Open a window with the before/after slider for a gallery item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := previewItem(a, args, f)
			if err != nil {
				return err
			}
			scene, err := buildPreview(cmd, a, item, f)
			if err != nil {
				return err
			}
			return faceframe.Run(scene, faceframe.RunConfig{
				Title:   "FaceFrame - " + item.Title,
				Width:   a.cfg.Preview.Width,
				Height:  a.cfg.Preview.Height,
				ShowFPS: f.debug,
			})
		},
	}
	cmd.Flags().StringVar(&f.before, "before", "", "before image path (instead of a gallery item)")
	cmd.Flags().StringVar(&f.after, "after", "", "after image path (instead of a gallery item)")
	cmd.Flags().StringVar(&f.style, "style", "", "label style: minimal, standard or elegant (overrides preview.label_style)")
	cmd.Flags().Float64Var(&f.initial, "initial", 50, "initial divider position in percent")
	cmd.Flags().BoolVar(&f.noPreview, "no-auto-preview", false, "disable the guided preview on first hover")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "JSON or YAML input script to play")
	cmd.Flags().BoolVar(&f.exit, "exit", false, "close the window when the scenario finishes")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "show FPS and log frame stats")
	return cmd
}

// previewItem resolves the images to show, either from flags or from the
// gallery. Without arguments the first featured item is used.
func previewItem(a *app, args []string, f previewFlags) (content.GalleryItem, error) {
	if f.before != "" || f.after != "" {
		if f.before == "" || f.after == "" {
			return content.GalleryItem{}, errors.New("--before and --after must be given together")
		}
		return content.GalleryItem{ID: "custom", Title: "Custom comparison", BeforeImage: f.before, AfterImage: f.after}, nil
	}

	store, err := content.Open(a.cfg.Content.Dir, content.WithLogger(a.logger.Named("content")))
	if err != nil {
		return content.GalleryItem{}, err
	}
	var item *content.GalleryItem
	if len(args) == 1 {
		item = store.GalleryItemByID(args[0])
		if item == nil {
			return content.GalleryItem{}, fmt.Errorf("gallery item %q: %w", args[0], content.ErrNotFound)
		}
	} else {
		items := store.FeaturedGalleryItems()
		if len(items) == 0 {
			items = store.GalleryItems()
		}
		if len(items) == 0 {
			return content.GalleryItem{}, errors.New("gallery is empty; pass an id or --before/--after")
		}
		item = &items[0]
	}
	resolved := *item
	resolved.BeforeImage = assetPath(a.cfg.Assets.Dir, item.BeforeImage)
	resolved.AfterImage = assetPath(a.cfg.Assets.Dir, item.AfterImage)
	return resolved, nil
}

// assetPath maps a site image URL such as /images/a.jpg onto the assets dir.
func assetPath(assetsDir, ref string) string {
	if rest, ok := strings.CutPrefix(ref, "/images/"); ok {
		return filepath.Join(assetsDir, filepath.FromSlash(rest))
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(assetsDir, filepath.FromSlash(ref))
}

func buildPreview(cmd *cobra.Command, a *app, item content.GalleryItem, f previewFlags) (*faceframe.Scene, error) {
	styleName := a.cfg.Preview.LabelStyle
	if f.style != "" {
		styleName = f.style
	}
	style, ok := faceframe.ParseLabelStyle(styleName)
	if !ok {
		return nil, fmt.Errorf("unknown label style %q", styleName)
	}

	logger := a.logger.Named("preview")
	scene := faceframe.NewScene()
	scene.SetLogger(logger)
	scene.ClearColor = faceframe.Palette.Ivory
	scene.SetDebugMode(f.debug)

	ctx := cmd.Context()
	before := faceframe.LoadImage(ctx, item.BeforeImage, faceframe.WithLoadLogger(logger))
	after := faceframe.LoadImage(ctx, item.AfterImage, faceframe.WithLoadLogger(logger))

	w, h := float64(a.cfg.Preview.Width), float64(a.cfg.Preview.Height)
	sliderW := w - 2*faceframe.SpaceXL
	sliderH := min(sliderW*3/4, h-2*faceframe.SpaceXL)
	alt := item.Alt
	if alt == "" {
		alt = item.Title + ", before and after"
	}
	slider := faceframe.NewComparison(item.ID, before, after,
		faceframe.WithSize(sliderW, sliderH),
		faceframe.WithInitialPosition(f.initial),
		faceframe.WithAutoPreview(!f.noPreview),
		faceframe.WithLabelStyle(style),
		faceframe.WithAlt(alt),
		faceframe.WithSlideComplete(func(p float64) {
			logger.Info("slide complete", zap.String("item", item.ID), zap.Float64("position", p))
		}),
	)
	slider.Node().SetPosition(faceframe.SpaceXL, (h-sliderH)/2)
	scene.Root().AddChild(slider.Node())

	if f.scenario != "" {
		data, err := os.ReadFile(f.scenario)
		if err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
		sc, err := faceframe.LoadScenario(data)
		if err != nil {
			return nil, err
		}
		scene.SetScenario(sc)
		if f.exit {
			scene.SetUpdateFunc(func() error {
				if sc.Done() {
					return ebiten.Termination
				}
				return nil
			})
		}
	}
	return scene, nil
}
