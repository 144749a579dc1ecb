package api

import (
	"net/http"
	"strconv"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
	"github.com/fiveflix/videos-ms-go/internal/validation"
)

// uploads are streamed to storage; this bounds what is buffered in memory.
const maxMultipartMemory = 32 << 20

type createVideoRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Genre    string `json:"genre" validate:"required,max=100"`
	Duration int    `json:"duration" validate:"required,gt=0"`
	Year     int    `json:"year" validate:"required,gte=1900,lte=2030"`
}

// CreateVideoHandler ingests a multipart upload carrying the metadata fields
// plus the video and thumbnail binaries.
func CreateVideoHandler(svc catalog.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart payload", err)
			return
		}

		req := createVideoRequest{
			Title: r.FormValue("title"),
			Genre: r.FormValue("genre"),
		}
		errs := map[string]string{}
		req.Duration = formInt(r, "duration", errs)
		req.Year = formInt(r, "year", errs)

		if err := validation.ValidateStruct(req); err != nil {
			for k, v := range validation.ErrorsToMap(err) {
				errs[k] = v
			}
		}

		video, videoCleanup, err := formUpload(r, "video")
		if err != nil {
			errs["video"] = "required"
		} else {
			defer videoCleanup()
		}
		thumb, thumbCleanup, err := formUpload(r, "thumbnail")
		if err != nil {
			errs["thumbnail"] = "required"
		} else {
			defer thumbCleanup()
		}

		if len(errs) > 0 {
			WriteValidationError(w, errs)
			return
		}

		in := catalog.CreateVideoInput{
			Title:      req.Title,
			Genre:      req.Genre,
			Duration:   req.Duration,
			Year:       req.Year,
			IsFeatured: catalog.CoerceBool(r.FormValue("is_featured")),
			Video:      video,
			Thumbnail:  thumb,
		}
		if _, ok := r.MultipartForm.Value["description"]; ok {
			d := r.FormValue("description")
			in.Description = &d
		}

		out, err := svc.CreateVideo(r.Context(), in)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusCreated, "Video created successfully", out)
	}
}

func formInt(r *http.Request, name string, errs map[string]string) int {
	raw := r.FormValue(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs[name] = "numeric"
		return 0
	}
	return n
}

func formUpload(r *http.Request, name string) (catalog.UploadFile, func(), error) {
	file, header, err := r.FormFile(name)
	if err != nil {
		return catalog.UploadFile{}, nil, err
	}
	return catalog.UploadFile{
		Name:   header.Filename,
		Size:   header.Size,
		Reader: file,
	}, func() { _ = file.Close() }, nil
}
