package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Me asks the server who the stored token belongs to and prints the result.
func (a *App) Me(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		log.Printf("Request unsuccessfull: %s", err.Error())
		return err
	}

	printlnFn("Logged in as:", user)
	return nil
}

// List fetches and prints the user's documents, most recent first.
func (a *App) List(ctx context.Context) error {
	list, err := a.api.ListDocuments(ctx)
	if err != nil {
		log.Printf("Request unsuccessfull: %s", err.Error())
		return err
	}

	if len(list.Documents) == 0 {
		printlnFn("No documents yet")
		return nil
	}

	for _, d := range list.Documents {
		printlnFn(fmt.Sprintf("%s  %s  uploaded %s", d.ID, d.Filename,
			d.UploadDate.Format("2006-01-02 15:04:05")))
	}
	return nil
}

// Upload prompts for a local file path and sends the file to the server.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to file", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.api.UploadDocument(ctx, path)
	if err != nil {
		log.Printf("Upload unsuccessfull: %s", err.Error())
		return err
	}

	printlnFn("Uploaded:", doc.Filename, "as", doc.S3Key)
	return nil
}
