package main

import (
	"errors"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/newsboard/newsboard/internal/domain/model"
	"github.com/newsboard/newsboard/internal/service"
)

const maxTitleWidth = 48

func runList(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	if err := parseFlags(fs, ctx.Out, args); err != nil {
		return err
	}

	_, news, err := ctx.services()
	if err != nil {
		return err
	}
	list, err := news.List(ctx.Ctx)
	if err != nil {
		return errors.New(service.ListFailureMessage(err))
	}

	if len(list.Items) == 0 {
		return writeln(ctx.Out, service.NoNewsMessage)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "#\tTITLE\tIMAGE\tFILE"); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, item := range list.Items {
		fileName := item.FileName.String()
		if fileName == "" {
			fileName = "-"
		}
		if err := writef(tw, "%d\t%s\t%s\t%s\n", i+1, truncate(item.Title.String(), maxTitleWidth), item.ImageSource().Kind, fileName); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return writef(ctx.Out, "\n%d item(s), response shape: %s\n", len(list.Items), list.Shape)
}

func runUpload(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	title := fs.String("title", "", "news title (required)")
	description := fs.String("description", "", "news description (required)")
	imagePath := fs.String("image", "", "path to an image file (required)")
	email := fs.String("email", "", "identity label stored with the item")
	if err := parseFlags(fs, ctx.Out, args); err != nil {
		return err
	}
	if *imagePath == "" {
		return fmt.Errorf("%w: --image is required", errUsage)
	}

	content, err := os.ReadFile(*imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	sub := model.NewsSubmission{
		Title:       *title,
		Description: *description,
		FileName:    filepath.Base(*imagePath),
		FileType:    detectFileType(*imagePath, content),
		Content:     content,
		Email:       strings.TrimSpace(*email),
	}

	_, news, err := ctx.services()
	if err != nil {
		return err
	}
	if err := news.Upload(ctx.Ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", service.UploadFailureMessage(err), err)
	}
	return writeln(ctx.Out, service.UploadSucceededMessage)
}

// detectFileType uses the extension first and sniffs the bytes otherwise.
func detectFileType(path string, content []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		mediaType, _, _ := strings.Cut(byExt, ";")
		return mediaType
	}
	sniffed, _, _ := strings.Cut(http.DetectContentType(content), ";")
	return sniffed
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
