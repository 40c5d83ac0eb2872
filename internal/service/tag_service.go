package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/repository"
	"tag_tracker_go/pkg/log"
	"tag_tracker_go/pkg/vision"

	"gorm.io/gorm"
)

// Column widths of the tags table.
const (
	maxStyleNumberLength = 200
	maxDescriptionLength = 500
	maxPONumberLength    = 200
	maxPriceLength       = 20
	maxSourceLength      = 50
)

// SaveTagInput is a new tag as submitted by the scanner page.
// Optional values are nil when the client did not send them.
type SaveTagInput struct {
	StyleNumber string
	Description string
	PONumber    string
	ScanDate    *string
	ReturnDate  *string
	ImageData   *string
	FolderID    *uint
	Price       *string
	Source      *string
}

// TagPatch is a partial update: nil fields keep their stored value.
type TagPatch struct {
	StyleNumber *string
	Description *string
	PONumber    *string
	ScanDate    *string
	ReturnDate  *string
	ImageData   *string
	FolderID    *uint
	Price       *string
	Source      *string
}

type TagService interface {
	Create(in SaveTagInput) (*model.TagView, error)
	List(folderID *uint) ([]model.TagView, error)
	Get(id uint) (*model.TagView, error)
	// Image returns the raw stored image bytes.
	Image(id uint) ([]byte, error)
	Update(id uint, patch TagPatch) (*model.TagView, error)
	Delete(id uint) error
	// Today is the calendar day days_until_due is measured from.
	Today() time.Time
}

type tagService struct {
	tagRepo repository.TagRepository
	policy  ReturnDatePolicy
	now     func() time.Time
}

// NewTagService builds the tag service. now defaults to time.Now and is
// only replaced in tests.
func NewTagService(tagRepo repository.TagRepository, policy ReturnDatePolicy, now func() time.Time) TagService {
	if now == nil {
		now = time.Now
	}
	return &tagService{tagRepo: tagRepo, policy: policy, now: now}
}

func (s *tagService) Today() time.Time {
	return model.CivilDate(s.now())
}

// Create validates and stores a scanned tag.
// Rules:
// 1. style_number, description and po_number are trimmed and required.
// 2. scan_date defaults to today; a malformed scan_date is rejected.
// 3. return_date follows the return-date policy.
// 4. image_data is base64, with or without a data-URL header.
// 5. folder_id, when given, must name an existing folder.
func (s *tagService) Create(in SaveTagInput) (*model.TagView, error) {
	styleNumber, err := requiredText("style_number", in.StyleNumber, maxStyleNumberLength)
	if err != nil {
		return nil, err
	}
	description, err := requiredText("description", in.Description, maxDescriptionLength)
	if err != nil {
		return nil, err
	}
	poNumber, err := requiredText("po_number", in.PONumber, maxPONumberLength)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	scanDate := today
	if in.ScanDate != nil && strings.TrimSpace(*in.ScanDate) != "" {
		if scanDate, err = parseDateField("scan_date", *in.ScanDate); err != nil {
			return nil, err
		}
	}

	image, err := decodeImage(in.ImageData)
	if err != nil {
		return nil, err
	}
	price, err := optionalText("price", in.Price, maxPriceLength)
	if err != nil {
		return nil, err
	}
	source, err := optionalText("source", in.Source, maxSourceLength)
	if err != nil {
		return nil, err
	}

	tag := &model.Tag{
		StyleNumber: styleNumber,
		Description: description,
		PONumber:    poNumber,
		ScanDate:    scanDate,
		ReturnDate:  s.policy.Effective(scanDate, explicitReturnDate(in.ReturnDate)),
		ImageData:   image,
		FolderID:    in.FolderID,
		Price:       price,
		Source:      source,
	}
	tag.SyncRawText()

	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	view := tag.View(today)
	return &view, nil
}

func (s *tagService) List(folderID *uint) ([]model.TagView, error) {
	tags, err := s.tagRepo.FindAll(folderID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	views := make([]model.TagView, 0, len(tags))
	for i := range tags {
		views = append(views, tags[i].View(today))
	}
	return views, nil
}

func (s *tagService) Get(id uint) (*model.TagView, error) {
	tag, err := s.find(id)
	if err != nil {
		return nil, err
	}
	view := tag.View(s.Today())
	return &view, nil
}

func (s *tagService) Image(id uint) ([]byte, error) {
	tag, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if len(tag.ImageData) == 0 {
		return nil, ErrImageNotFound
	}
	return tag.ImageData, nil
}

// Update applies a partial update.
// Rules:
//  1. Absent fields keep their stored value; present text fields are
//     validated like on Create.
//  2. raw_text is regenerated from the resulting fields.
//  3. An explicit return_date in the patch wins; otherwise the return date
//     is recomputed from the (possibly new) scan_date.
func (s *tagService) Update(id uint, patch TagPatch) (*model.TagView, error) {
	var (
		styleNumber, description, poNumber string
		scanDate                           time.Time
		image                              []byte
		price, source                      *string
		err                                error
	)

	if patch.StyleNumber != nil {
		if styleNumber, err = requiredText("style_number", *patch.StyleNumber, maxStyleNumberLength); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if description, err = requiredText("description", *patch.Description, maxDescriptionLength); err != nil {
			return nil, err
		}
	}
	if patch.PONumber != nil {
		if poNumber, err = requiredText("po_number", *patch.PONumber, maxPONumberLength); err != nil {
			return nil, err
		}
	}
	if patch.ScanDate != nil {
		if scanDate, err = parseDateField("scan_date", *patch.ScanDate); err != nil {
			return nil, err
		}
	}
	if patch.ImageData != nil {
		if image, err = decodeImage(patch.ImageData); err != nil {
			return nil, err
		}
	}
	if price, err = optionalText("price", patch.Price, maxPriceLength); err != nil {
		return nil, err
	}
	if source, err = optionalText("source", patch.Source, maxSourceLength); err != nil {
		return nil, err
	}
	explicit := explicitReturnDate(patch.ReturnDate)

	updated, err := s.tagRepo.Update(id, func(tag *model.Tag) error {
		if patch.StyleNumber != nil {
			tag.StyleNumber = styleNumber
		}
		if patch.Description != nil {
			tag.Description = description
		}
		if patch.PONumber != nil {
			tag.PONumber = poNumber
		}
		if patch.ScanDate != nil {
			tag.ScanDate = scanDate
		}
		if patch.ImageData != nil {
			tag.ImageData = image
		}
		if patch.FolderID != nil {
			tag.FolderID = patch.FolderID
		}
		if patch.Price != nil {
			tag.Price = price
		}
		if patch.Source != nil {
			tag.Source = source
		}
		tag.ReturnDate = s.policy.Effective(tag.ScanDate, explicit)
		tag.SyncRawText()
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrTagNotFound
		case errors.Is(err, repository.ErrFolderNotFound):
			return nil, ErrFolderNotFound
		default:
			return nil, err
		}
	}

	view := updated.View(s.Today())
	return &view, nil
}

func (s *tagService) Delete(id uint) error {
	if err := s.tagRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}

func (s *tagService) find(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func requiredText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalidInput("%s is required", field)
	}
	if len([]rune(value)) > maxLen {
		return "", invalidInput("%s must be at most %d characters", field, maxLen)
	}
	return value, nil
}

// optionalText trims value; an empty result clears the field (nil).
func optionalText(field string, value *string, maxLen int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil, nil
	}
	if len([]rune(v)) > maxLen {
		return nil, invalidInput("%s must be at most %d characters", field, maxLen)
	}
	return &v, nil
}

func parseDateField(field, value string) (time.Time, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, invalidInput("%s: %v", field, err)
	}
	return d, nil
}

// explicitReturnDate yields the caller's return date when it is present and
// parseable. Anything else falls back to the policy default.
func explicitReturnDate(raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	d, err := model.ParseDate(*raw)
	if err != nil {
		log.Warnw("Ignoring unparseable return_date", "return_date", *raw, "error", err)
		return nil
	}
	return &d
}

func decodeImage(raw *string) ([]byte, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	data, _ := vision.SplitDataURL(*raw)
	image, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, invalidInput("image_data is not valid base64")
	}
	return image, nil
}
