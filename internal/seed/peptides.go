// Package seed holds the built-in peptide catalog and the effect taxonomy
// derived from it. Used by the seed endpoints and the seed command.
package seed

import "github.com/peptitrace/backend/internal/models"

// Peptides returns a fresh copy of the built-in catalog.
func Peptides() []models.Peptide {
	out := make([]models.Peptide, len(catalog))
	copy(out, catalog)
	return out
}

// Effects derives the effect taxonomy from the catalog. Listed common
// effects become positive entries, listed side effects become negative
// entries under the Side Effect category.
func Effects() []models.Effect {
	seen := map[string]struct{}{}
	var out []models.Effect
	for _, p := range catalog {
		for _, name := range p.CommonEffects {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, models.Effect{
				Name:        name,
				Description: name + " reported with " + p.Name,
				Type:        models.EffectPositive,
				Category:    "Physical Performance",
				Severity:    "mild",
				Frequency:   "common",
				IsCommon:    true,
			})
		}
		for _, name := range p.SideEffects {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, models.Effect{
				Name:        name,
				Description: name + " reported with " + p.Name,
				Type:        models.EffectNegative,
				Category:    "Side Effect",
				Severity:    "mild",
				Frequency:   "uncommon",
				IsCommon:    false,
			})
		}
	}
	return out
}

var catalog = []models.Peptide{
	{
		Name:                "BPC-157",
		Sequence:            "Gly-Glu-Pro-Pro-Pro-Gly-Lys-Pro-Ala-Asp-Asp-Ala-Gly-Leu-Val",
		Category:            "Healing & Recovery",
		Description:         "A synthetic peptide with potent healing and regenerative properties",
		DetailedDescription: "BPC-157 is a synthetic peptide derived from a protective protein found in gastric juice. It has shown remarkable healing properties for various tissues including tendons, muscles, and the gastrointestinal tract.",
		Mechanism:           "Promotes angiogenesis and tissue repair through growth factor modulation",
		CommonDosage:        "250-500 mcg",
		CommonFrequency:     "daily",
		CommonEffects:       models.JSONBStringArray{"Tissue repair", "Anti-inflammatory", "Gut healing", "Tendon repair", "Joint healing"},
		SideEffects:         models.JSONBStringArray{"Mild injection site reactions", "Rare allergic reactions"},
		DosageRanges:        models.DosageRanges{Low: "250 mcg", Medium: "500 mcg", High: "1000 mcg"},
		Timeline:            models.EffectTimeline{Onset: "1-2 days", Peak: "2-3 weeks", Duration: "4-6 weeks"},
	},
	{
		Name:                "TB-500",
		Sequence:            "Ac-Ser-Asp-Lys-Pro-Asp-Met-Ala-Glu-Ile-Glu-Lys-Phe-Asp-Lys-Ser-Lys-Leu-Lys-Lys-Thr-Glu-Thr-Gln-Glu-Lys-Asn-Pro-Leu-Pro-Ser-Lys-Asp",
		Category:            "Healing & Recovery",
		Description:         "A synthetic peptide that promotes cell migration and tissue repair",
		DetailedDescription: "TB-500 is a synthetic version of Thymosin Beta-4, a naturally occurring peptide that plays a crucial role in cell migration and tissue repair.",
		Mechanism:           "Promotes cell migration and angiogenesis through actin binding",
		CommonDosage:        "2-5 mg",
		CommonFrequency:     "weekly",
		CommonEffects:       models.JSONBStringArray{"Tissue repair", "Wound healing", "Muscle recovery", "Joint healing", "Anti-inflammatory"},
		SideEffects:         models.JSONBStringArray{"Mild injection site reactions", "Rare allergic reactions"},
		DosageRanges:        models.DosageRanges{Low: "2 mg", Medium: "3.5 mg", High: "5 mg"},
		Timeline:            models.EffectTimeline{Onset: "2-3 days", Peak: "3-4 weeks", Duration: "6-8 weeks"},
	},
	{
		Name:                "CJC-1295",
		Sequence:            "Tyr-D-Ala-Asp-Ala-Ile-Phe-Thr-Gln-Ser-Tyr-Arg-Lys-Val-Leu-Ala-Gln-Leu-Ser-Ala-Arg-Lys-Leu-Leu-Gln-Asp-Ile-Leu-Ser-Arg",
		Category:            "Growth Hormone",
		Description:         "A long-acting growth hormone releasing hormone analog",
		DetailedDescription: "CJC-1295 is a synthetic analog of Growth Hormone Releasing Hormone that has been modified to have a longer half-life. It stimulates the natural production of growth hormone and IGF-1.",
		Mechanism:           "Growth hormone releasing hormone (GHRH) analog",
		CommonDosage:        "1-2 mg",
		CommonFrequency:     "weekly",
		CommonEffects:       models.JSONBStringArray{"Increased muscle mass", "Fat loss", "Improved sleep", "Enhanced recovery", "Anti-aging effects"},
		SideEffects:         models.JSONBStringArray{"Water retention", "Joint pain", "Carpal tunnel syndrome", "Insulin resistance"},
		DosageRanges:        models.DosageRanges{Low: "1 mg", Medium: "1.5 mg", High: "2 mg"},
		Timeline:            models.EffectTimeline{Onset: "1-2 weeks", Peak: "4-6 weeks", Duration: "8-12 weeks"},
	},
	{
		Name:                "Ipamorelin",
		Sequence:            "Aib-His-D-2-Nal-D-Phe-Lys-NH2",
		Category:            "Growth Hormone",
		Description:         "A selective growth hormone secretagogue",
		DetailedDescription: "Ipamorelin is a pentapeptide that selectively stimulates growth hormone release without affecting other hormones like cortisol or prolactin.",
		Mechanism:           "Growth hormone secretagogue",
		CommonDosage:        "200-1000 mcg",
		CommonFrequency:     "daily",
		CommonEffects:       models.JSONBStringArray{"Increased muscle mass", "Fat loss", "Improved sleep", "Enhanced recovery", "Anti-aging effects"},
		SideEffects:         models.JSONBStringArray{"Mild hunger", "Rare headaches", "Insulin resistance"},
		DosageRanges:        models.DosageRanges{Low: "200 mcg", Medium: "500 mcg", High: "1000 mcg"},
		Timeline:            models.EffectTimeline{Onset: "1-2 hours", Peak: "2-3 hours", Duration: "4-6 hours"},
	},
	{
		Name:                "GHK-Cu",
		Sequence:            "Gly-His-Lys-Cu",
		Category:            "Anti-Aging",
		Description:         "A copper peptide with tissue repair and anti-inflammatory properties",
		DetailedDescription: "GHK-Cu is a naturally occurring copper peptide that has shown remarkable anti-aging and tissue repair properties, particularly for skin rejuvenation and wound healing.",
		Mechanism:           "Copper peptide with tissue repair and anti-inflammatory properties",
		CommonDosage:        "1-3 mg",
		CommonFrequency:     "daily",
		CommonEffects:       models.JSONBStringArray{"Skin rejuvenation", "Wound healing", "Anti-inflammatory", "Collagen synthesis", "Hair growth"},
		SideEffects:         models.JSONBStringArray{"Mild injection site reactions", "Rare allergic reactions"},
		DosageRanges:        models.DosageRanges{Low: "1 mg", Medium: "2 mg", High: "3 mg"},
		Timeline:            models.EffectTimeline{Onset: "1-2 weeks", Peak: "4-6 weeks", Duration: "8-12 weeks"},
	},
	{
		Name:                "PT-141",
		Sequence:            "Ac-Nle-cyclo[Asp-His-D-Phe-Arg-Trp-Lys]-NH2",
		Category:            "Performance & Enhancement",
		Description:         "A melanocortin receptor agonist for sexual function",
		DetailedDescription: "PT-141 is a synthetic peptide that acts on melanocortin receptors to enhance sexual function through the central nervous system rather than blood flow.",
		Mechanism:           "Melanocortin receptor agonist",
		CommonDosage:        "1-2 mg",
		CommonFrequency:     "as needed",
		CommonEffects:       models.JSONBStringArray{"Enhanced libido", "Improved sexual function", "Increased arousal"},
		SideEffects:         models.JSONBStringArray{"Nausea", "Flushing", "Headache", "Increased blood pressure"},
		DosageRanges:        models.DosageRanges{Low: "1 mg", Medium: "1.5 mg", High: "2 mg"},
		Timeline:            models.EffectTimeline{Onset: "30-60 minutes", Peak: "2-3 hours", Duration: "4-6 hours"},
	},
	{
		Name:                "DSIP",
		Sequence:            "Trp-Ala-Gly-Gly-Asp-Ala-Ser-Gly-Glu",
		Category:            "Cognitive Enhancement",
		Description:         "A delta sleep-inducing peptide",
		DetailedDescription: "DSIP is a naturally occurring peptide that helps regulate sleep patterns and stress response, with potential to improve sleep quality and reduce stress.",
		Mechanism:           "Delta sleep-inducing peptide",
		CommonDosage:        "100-500 mcg",
		CommonFrequency:     "daily",
		CommonEffects:       models.JSONBStringArray{"Improved sleep quality", "Stress reduction", "Anti-anxiety", "Pain relief"},
		SideEffects:         models.JSONBStringArray{"Drowsiness", "Rare allergic reactions"},
		DosageRanges:        models.DosageRanges{Low: "100 mcg", Medium: "250 mcg", High: "500 mcg"},
		Timeline:            models.EffectTimeline{Onset: "30-60 minutes", Peak: "2-3 hours", Duration: "4-6 hours"},
	},
	{
		Name:                "Epitalon",
		Sequence:            "Ala-Glu-Asp-Gly",
		Category:            "Anti-Aging",
		Description:         "A telomerase-activating peptide",
		DetailedDescription: "Epitalon is a synthetic peptide that has shown potential in activating telomerase and extending telomeres, which are associated with cellular aging.",
		Mechanism:           "Telomerase activation and anti-aging properties",
		CommonDosage:        "5-10 mg",
		CommonFrequency:     "daily",
		CommonEffects:       models.JSONBStringArray{"Anti-aging", "Improved sleep", "Enhanced longevity", "Cellular repair", "Immune support"},
		SideEffects:         models.JSONBStringArray{"Mild injection site reactions", "Rare allergic reactions"},
		DosageRanges:        models.DosageRanges{Low: "5 mg", Medium: "7.5 mg", High: "10 mg"},
		Timeline:            models.EffectTimeline{Onset: "2-3 weeks", Peak: "4-6 weeks", Duration: "8-12 weeks"},
	},
}
