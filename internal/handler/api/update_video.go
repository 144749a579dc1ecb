package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// UpdateVideoHandler applies a partial update. Fields absent from the form
// stay untouched; present-but-invalid values are skipped by the catalog layer
// so a bad duration never blocks a title change.
func UpdateVideoHandler(svc catalog.Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVideoID(w, r)
		if !ok {
			return
		}
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			WriteError(w, http.StatusBadRequest, "Invalid multipart payload", err)
			return
		}

		in := catalog.UpdateVideoInput{ID: id}
		if v, ok := formValue(r, "title"); ok {
			in.Title = &v
		}
		if v, ok := formValue(r, "genre"); ok {
			in.Genre = &v
		}
		if v, ok := formValue(r, "description"); ok {
			in.Description = &v
			in.DescriptionSet = true
		}
		if v, ok := formValue(r, "duration"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				in.Duration = &n
			}
		}
		if v, ok := formValue(r, "year"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				in.Year = &n
			}
		}
		if v, ok := formValue(r, "is_featured"); ok {
			b := catalog.CoerceBool(v)
			in.IsFeatured = &b
		}

		if video, cleanup, err := formUpload(r, "video"); err == nil {
			defer cleanup()
			in.Video = &video
		}
		if thumb, cleanup, err := formUpload(r, "thumbnail"); err == nil {
			defer cleanup()
			in.Thumbnail = &thumb
		}

		out, err := svc.UpdateVideo(r.Context(), in)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "Video updated successfully", out)
	}
}

// formValue reports presence so the update can distinguish "clear this field"
// from "leave it alone".
func formValue(r *http.Request, name string) (string, bool) {
	if r.MultipartForm != nil {
		if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	if vs, ok := r.PostForm[name]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}
