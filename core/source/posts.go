// ABOUTME: Shared feed parsing used by every source to produce posts
// ABOUTME: Maps gofeed items onto the Post domain model

package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
	"digests-preview/core/interfaces"
	htmlutil "digests-preview/pkg/utils/html"
	timeutil "digests-preview/pkg/utils/time"
)

const introLength = 280

// loadFeed returns text when given, otherwise fetches feedURL through task
func loadFeed(ctx context.Context, task interfaces.DownloadTask, name domain.SourceName, feedURL string, text *domain.TextResponse) (*domain.TextResponse, error) {
	if text != nil {
		return text, nil
	}
	resp, err := task.Text(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, &coreerrors.ExternalAPIError{
			API:        string(name),
			StatusCode: resp.Status,
			Message:    "feed request failed for " + feedURL,
		}
	}
	return resp, nil
}

// feedPosts parses a feed document into posts, dropping items that cannot be shown
func feedPosts(text *domain.TextResponse) ([]domain.Post, error) {
	feed, err := gofeed.NewParser().ParseString(text.Text)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", text.URL, err)
	}

	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		post := convertItem(item, text.URL)
		if post.IsValid() {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// convertItem converts a gofeed item to a post
func convertItem(item *gofeed.Item, base string) domain.Post {
	post := domain.Post{
		OriginID: item.GUID,
		URL:      resolveLink(base, item.Link),
		Title:    strings.TrimSpace(item.Title),
	}

	if post.OriginID == "" {
		post.OriginID = post.URL
	}

	// Content wins over description for the full body
	if item.Content != "" {
		post.Full = item.Content
	} else {
		post.Full = item.Description
	}

	intro := item.Description
	if intro == "" {
		intro = item.Content
	}
	post.Intro = htmlutil.Truncate(htmlutil.StripHTML(intro), introLength)

	switch {
	case item.PublishedParsed != nil:
		post.PublishedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		post.PublishedAt = *item.UpdatedParsed
	case item.Published != "":
		post.PublishedAt = timeutil.ParseFlexibleTime(item.Published)
	}

	post.Media = itemMedia(item)
	return post
}

// itemMedia lists image URLs of an item in priority order without duplicates
func itemMedia(item *gofeed.Item) []string {
	var media []string
	add := func(u string) {
		if u == "" {
			return
		}
		for _, m := range media {
			if m == u {
				return
			}
		}
		media = append(media, u)
	}

	if item.ITunesExt != nil {
		add(item.ITunesExt.Image)
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") {
			add(enc.URL)
		}
	}
	if item.Image != nil {
		add(item.Image.URL)
	}
	return media
}

func resolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
