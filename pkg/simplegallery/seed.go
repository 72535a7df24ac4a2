package simplegallery

import (
	"context"
	"fmt"
)

func strptr(s string) *string { return &s }

// Seed populates the repository behind svc with a small demo gallery. It is
// intended for development servers and examples, not production data.
func Seed(ctx context.Context, svc Service) error {
	type seedImage struct {
		url      string
		title    string
		subtitle string
	}
	type seedRow struct {
		title  string
		images []seedImage
	}
	type seedPage struct {
		name string
		rows []seedRow
	}

	pages := []seedPage{
		{
			name: "Gallery 1",
			rows: []seedRow{
				{
					title: "Nature Collection",
					images: []seedImage{
						{"https://picsum.photos/id/112/300/300", "Mountain View", "Beautiful landscape"},
						{"https://picsum.photos/id/122/300/300", "Ocean Waves", "Seascape"},
						{"https://picsum.photos/id/132/300/300", "Forest Path", "Nature trail"},
					},
				},
				{
					title: "Urban Photography",
					images: []seedImage{
						{"https://picsum.photos/id/172/300/300", "City Lights", "Night view"},
						{"https://picsum.photos/id/182/300/300", "Street Art", "Graffiti"},
					},
				},
			},
		},
		{
			name: "Gallery 2",
			rows: []seedRow{
				{
					title: "Abstract Art",
					images: []seedImage{
						{"https://picsum.photos/id/103/300/300", "Color Splash", "Abstract"},
						{"https://picsum.photos/id/113/300/300", "Geometric", "Patterns"},
					},
				},
			},
		},
	}

	for _, sp := range pages {
		page, err := svc.CreatePage(ctx, CreatePageRequest{Name: sp.name})
		if err != nil {
			return fmt.Errorf("seed page %q: %w", sp.name, err)
		}
		for _, sr := range sp.rows {
			row, err := svc.CreateRow(ctx, CreateRowRequest{PageID: page.ID, Title: sr.title})
			if err != nil {
				return fmt.Errorf("seed row %q: %w", sr.title, err)
			}
			for _, si := range sr.images {
				_, err := svc.CreateImage(ctx, CreateImageRequest{
					RowID:    row.ID,
					URL:      si.url,
					Title:    si.title,
					Subtitle: strptr(si.subtitle),
				})
				if err != nil {
					return fmt.Errorf("seed image %q: %w", si.title, err)
				}
			}
		}
	}

	return nil
}
