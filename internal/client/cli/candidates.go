package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/filex"
	"github.com/dmitrijs2005/ballotkeeper/internal/netx"
)

// ListCandidates prints candidates, optionally only those of one election.
func (a *App) ListCandidates(_ context.Context, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	rows := [][]string{{"ID", "NAME", "POSITION", "PARTY", "ELECTION", "VOTES"}}
	for _, c := range a.store.Candidates() {
		if filter != "" && c.ElectionID != filter {
			continue
		}
		rows = append(rows, []string{
			c.ID, c.Name, c.Position, orDash(c.Party), a.store.ElectionName(c.ElectionID), strconv.Itoa(c.Votes),
		})
	}
	if len(rows) == 1 {
		fmt.Fprintln(a.out, "No candidates")
		return nil
	}
	table(a.out, rows)
	return nil
}

func (a *App) AddCandidate(ctx context.Context, _ []string) error {
	var (
		d   models.CandidateDraft
		err error
	)
	if d.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if d.Position, err = getSimpleText(a.reader, "Position", a.out); err != nil {
		return err
	}
	if d.Party, err = getSimpleText(a.reader, "Party (optional)", a.out); err != nil {
		return err
	}
	if d.ElectionID, err = getSimpleText(a.reader, "Election ID", a.out); err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Image URL or file path (optional)", a.out)
	if err != nil {
		return err
	}
	if d.ImageURL, err = a.resolveImage(ctx, image); err != nil {
		return err
	}

	c, err := a.store.CreateCandidate(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added candidate %s (%s)\n", c.Name, c.ID)
	return nil
}

// resolveImage returns URLs as is and uploads local files through a
// presigned URL issued by the backend.
func (a *App) resolveImage(ctx context.Context, image string) (string, error) {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image, nil
	}
	if a.gateway == nil {
		return "", errors.New("image upload requires the backend; give a URL instead")
	}

	data, err := filex.ReadSmallFile(image, maxImageSize)
	if err != nil {
		return "", err
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", image, contentType)
	}

	target, err := a.gateway.CandidateImageUploadURL(ctx, contentType)
	if err != nil {
		return "", fmt.Errorf("upload url: %w", err)
	}
	if err := netx.UploadToPresignedURL(ctx, a.upload, target.UploadURL, contentType, data); err != nil {
		return "", err
	}
	a.log.Debug(ctx, "candidate image uploaded", "key", target.Key, "bytes", len(data))
	return target.ImageURL, nil
}

func (a *App) DeleteCandidate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delcandidate <candidateId>")
	}
	known := false
	for _, c := range a.store.Candidates() {
		known = known || c.ID == args[0]
	}
	if !known {
		fmt.Fprintln(a.out, "No candidate with ID", args[0])
		return nil
	}
	if err := a.store.DeleteCandidate(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted candidate", args[0])
	return nil
}
