package lessons

import (
	"fmt"
	"slices"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/survey"
	"github.com/fatali-fataliyev/lesson_board/internal/upload"
)

// Slots lists the upload slots each lesson offers.
func Slots(id ID) []upload.Slot {
	switch id {
	case InteractiveFeatures:
		return []upload.Slot{upload.SlotPreview, upload.SlotProcessing, upload.SlotAnalysis}
	case RealProjects:
		return []upload.Slot{upload.SlotSurvey, upload.SlotImage}
	}
	return nil
}

// Upload stores a parsed file in the slot of lesson id.
func Upload(st *session.State, id ID, slot upload.Slot, res upload.Result) ([]render.Block, error) {
	if !slices.Contains(Slots(id), slot) {
		return nil, appErrors.InvalidInput("lesson %s has no upload slot %q", id, slot)
	}
	if !slot.Accepts(res.Kind) {
		return nil, appErrors.InvalidInput("slot %q does not accept %s files", slot, res.Kind)
	}

	done := render.Success(fmt.Sprintf("File %s uploaded successfully!", res.Name))
	switch slot {
	case upload.SlotPreview:
		st.Interactive.Preview = &res
	case upload.SlotProcessing:
		st.Interactive.Processing = res.Table
		st.Interactive.Processed = nil
	case upload.SlotAnalysis:
		st.Interactive.Analysis = res.Table
	case upload.SlotSurvey:
		responses, err := survey.FromTable(res.Table)
		if err != nil {
			return nil, err
		}
		st.Projects.Survey = responses
		st.Projects.SurveyFilter = nil
		return []render.Block{done, render.Text("Loaded %d responses.", len(responses))}, nil
	case upload.SlotImage:
		st.Projects.Image = res.Image
		out := []render.Block{done, render.ImageInfo(res.Image)}
		for _, hex := range res.Image.Palette {
			out = append(out, render.Swatch(hex, hex))
		}
		return out, nil
	}
	return []render.Block{done}, nil
}
