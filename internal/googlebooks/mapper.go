package googlebooks

import "strings"

const placeholderCover = "https://via.placeholder.com/128x192?text=No+Cover"

// normalizeVolume maps a raw API item into the canonical Volume shape.
// Missing title falls back to "Untitled" and missing authors to "Unknown";
// list fields come back as joined display strings, never null.
func normalizeVolume(item volumeItem) Volume {
	info := item.VolumeInfo

	title := info.Title
	if title == "" {
		title = "Untitled"
	}

	author := "Unknown"
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	genre := ""
	if len(info.Categories) > 0 {
		genre = strings.Join(info.Categories, ", ")
	}

	return Volume{
		GoogleVolumeId: item.ID,
		Title:          title,
		Author:         author,
		Publisher:      info.Publisher,
		PublishedDate:  info.PublishedDate,
		Thumbnail:      pickThumbnail(info.ImageLinks),
		Genre:          genre,
		Description:    info.Description,
		InfoLink:       info.InfoLink,
		CatalogRating:  info.AverageRating,
	}
}

// pickThumbnail walks the image links in size preference order and falls
// back to a placeholder cover when the volume has no images at all.
func pickThumbnail(links *imageLinks) string {
	if links == nil {
		return placeholderCover
	}
	switch {
	case links.Large != "":
		return links.Large
	case links.Medium != "":
		return links.Medium
	case links.Thumbnail != "":
		return links.Thumbnail
	default:
		return placeholderCover
	}
}
