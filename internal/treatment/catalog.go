// Package treatment holds the static Panchakarma treatment catalog. The
// catalog is compiled-in reference data: looked up by id, never mutated.
package treatment

import "github.com/ayursutra/clinic-api/internal/model"

var catalog = []model.Treatment{
	{
		ID:              "udvarthana",
		Name:            "Udvarthana Herbal Powder Scrub",
		FocusDosha:      "kapha",
		DurationMinutes: 75,
		Description: "Stimulating full-body scrub with warm herbal powders to activate " +
			"lymphatic flow and mobilize kapha stagnation before eliminative therapies.",
		IdealPhase:           "Purva Karma · Preparation",
		RecommendedResources: []string{"Massage Cot", "Herbal Powder Kit", "Steam Unit"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Pre-steam warm up",
				DurationMinutes: 10,
				Description:     "Gentle swedana to open channels prior to herbal scrub application.",
				Instructions:    []string{"Light steam", "Protect head from excess heat"},
			},
			{
				Name:            "Herbal powder massage",
				DurationMinutes: 50,
				Description:     "Rhythmic upward strokes with warm powders to exfoliate and stimulate circulation.",
				Instructions:    []string{"Focus on lymphatic drainage pathways", "Adjust pressure per patient tolerance"},
			},
			{
				Name:            "Post-scrub rest",
				DurationMinutes: 15,
				Description:     "Allow powders to settle before warm water cleanse and hydration guidance.",
				Instructions:    []string{"Cover with warm sheet", "Offer warm ginger water"},
			},
		},
	},
	{
		ID:              "abhyanga_swedana",
		Name:            "Abhyanga with Herbal Swedana",
		FocusDosha:      "vata",
		DurationMinutes: 90,
		Description: "Classic medicated oil massage followed by localized steam to nourish " +
			"tissues, calm vata, and ready the body for deeper detox.",
		IdealPhase:           "Purva Karma · Snehan & Swedana",
		RecommendedResources: []string{"Shirodhara Table", "Steam Box", "Medicated Oils"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Full-body abhyanga",
				DurationMinutes: 60,
				Description:     "Synchronized massage with warm oil to lubricate joints and soothe the nervous system.",
				Instructions:    []string{"Use dosha-specific oil", "Maintain continuous strokes"},
			},
			{
				Name:            "Localized steam therapy",
				DurationMinutes: 20,
				Description:     "Targeted fomentation over key muscle groups to loosen ama.",
				Instructions:    []string{"Monitor heat tolerance", "Protect heart region"},
			},
			{
				Name:            "Grounding recovery",
				DurationMinutes: 10,
				Description:     "Cooling towel wipe-down followed by light snack guidance.",
				Instructions:    []string{"Offer warm water", "Suggest light kitchari"},
			},
		},
	},
	{
		ID:              "shirodhara",
		Name:            "Shirodhara Calming Stream",
		FocusDosha:      "pitta",
		DurationMinutes: 60,
		Description: "Steady stream of medicated oil over the forehead to quiet the mind, " +
			"regulate hormones, and ease pitta-driven stress.",
		IdealPhase:           "Throughout cleanse · Nervous system support",
		RecommendedResources: []string{"Shirodhara Stand", "Dhara Pot", "Medicated Oil"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Head and neck warm-up",
				DurationMinutes: 10,
				Description:     "Short abhyanga of scalp and neck to settle patient before flow starts.",
				Instructions:    []string{"Seat patient comfortably", "Check oil temperature"},
			},
			{
				Name:            "Shirodhara flow",
				DurationMinutes: 40,
				Description:     "Continuous stream covering brow line in gentle patterns.",
				Instructions:    []string{"Maintain rhythm", "Adjust flow width every 5 minutes"},
			},
			{
				Name:            "Integration",
				DurationMinutes: 10,
				Description:     "Quiet rest with head wrap, followed by herbal tea guidance.",
				Instructions:    []string{"Wrap head with cotton", "Offer brahmi tea"},
			},
		},
	},
	{
		ID:              "pizhichil",
		Name:            "Pizhichil Royal Oil Bath",
		FocusDosha:      "vata",
		DurationMinutes: 105,
		Description: "Continuous warm oil stream massage combining snehan and swedana to " +
			"relieve joint pain and deep-seated vata imbalance.",
		IdealPhase:           "Purva Karma · Intensive Snehan",
		RecommendedResources: []string{"Oil Bath Setup", "Heated Oil Reservoir", "Two Therapists"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Oil stream massage",
				DurationMinutes: 70,
				Description:     "Team choreography to bathe body with medicated oil while massaging in long strokes.",
				Instructions:    []string{"Maintain oil at 40°C", "Rotate therapists for endurance"},
			},
			{
				Name:            "Thermal sealing",
				DurationMinutes: 20,
				Description:     "Blanket wrap to lock in warmth and promote absorption.",
				Instructions:    []string{"Monitor sweating", "Ventilate room mildly"},
			},
			{
				Name:            "Recovery & hydration",
				DurationMinutes: 15,
				Description:     "Gentle wipe-down, rehydration, and post-care briefing.",
				Instructions:    []string{"Offer cumin-coriander tea", "Advise rest for remainder of day"},
			},
		},
	},
	{
		ID:              "nasya",
		Name:            "Nasya Sinus Cleanse",
		FocusDosha:      "kapha",
		DurationMinutes: 45,
		Description: "Therapeutic nasal administration to clear prana pathways, relieve " +
			"kapha congestion, and sharpen senses.",
		IdealPhase:           "Purva Karma · Daily Therapy",
		RecommendedResources: []string{"Nasya Drops", "Mild Steam Setup", "Shoulder Support"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Face steam & massage",
				DurationMinutes: 15,
				Description:     "Warm compress and gentle facial strokes to loosen sinus congestion.",
				Instructions:    []string{"Use eucalyptus steam", "Protect eyes"},
			},
			{
				Name:            "Nasya instillation",
				DurationMinutes: 10,
				Description:     "Administer medicated drops with head tilted back for optimal absorption.",
				Instructions:    []string{"Support neck", "Massage sinus points post drops"},
			},
			{
				Name:            "Post-care breathing",
				DurationMinutes: 20,
				Description:     "Guided pranayama and rest while drainage completes.",
				Instructions:    []string{"Encourage nadi shodhana", "Provide warm towel"},
			},
		},
	},
	{
		ID:              "kati_basti",
		Name:            "Kati Basti Lumbar Therapy",
		FocusDosha:      "vata",
		DurationMinutes: 60,
		Description: "Dough dam filled with warm medicated oil over the lower back to " +
			"relieve stiffness and nourish spinal tissues.",
		IdealPhase:           "Pradhana Karma · Supportive Care",
		RecommendedResources: []string{"Dough Dam Kit", "Heating Plate", "Therapeutic Oil"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Dough dam prep",
				DurationMinutes: 10,
				Description:     "Shape flour dough ring and secure over lumbar region.",
				Instructions:    []string{"Ensure seal prevents leakage", "Test patient comfort"},
			},
			{
				Name:            "Oil pooling",
				DurationMinutes: 35,
				Description:     "Maintain warm oil pool, replacing as temperature drops.",
				Instructions:    []string{"Check temperature every 5 minutes", "Cover patient with blanket"},
			},
			{
				Name:            "Post-therapy mobilization",
				DurationMinutes: 15,
				Description:     "Gentle spinal stretches and instructions for home care.",
				Instructions:    []string{"Guide cat-cow movements", "Suggest warm compress nightly"},
			},
		},
	},
	{
		ID:              "matra_basti",
		Name:            "Matra / Anuvasana Basti",
		FocusDosha:      "vata",
		DurationMinutes: 50,
		Description: "Nourishing oil enema to lubricate colon, balance vata, and support " +
			"elimination during Panchakarma.",
		IdealPhase:           "Pradhana Karma · Vasti",
		RecommendedResources: []string{"Sterile Basti Kit", "Private Therapy Room", "Supervising Practitioner"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Preparation & briefing",
				DurationMinutes: 10,
				Description:     "Explain process, check vitals, and ensure bladder elimination.",
				Instructions:    []string{"Confirm light meal 2 hours prior", "Offer calming breathwork"},
			},
			{
				Name:            "Oil administration",
				DurationMinutes: 10,
				Description:     "Warm oil gently infused with patient on left lateral pose.",
				Instructions:    []string{"Use sterile technique", "Maintain steady pace"},
			},
			{
				Name:            "Retention & observation",
				DurationMinutes: 30,
				Description:     "Patient rests while practitioner monitors comfort and response.",
				Instructions:    []string{"Dim lights", "Provide warm blanket"},
			},
		},
	},
	{
		ID:              "virechana_pre",
		Name:            "Virechana Preparation Consult",
		FocusDosha:      "pitta",
		DurationMinutes: 40,
		Description: "Detailed consultation to brief patient on purgation day protocol, " +
			"herbs, and post-care diet.",
		IdealPhase:           "Transition to Virechana",
		RecommendedResources: []string{"Consultation Room", "Diet Protocol Handouts", "Herbal Kit"},
		Steps: []model.TreatmentStep{
			{
				Name:            "Assessment & customization",
				DurationMinutes: 15,
				Description:     "Review vitals, prakriti, and current response to preparatory therapies.",
				Instructions:    []string{"Update vitals chart", "Note contraindications"},
			},
			{
				Name:            "Protocol briefing",
				DurationMinutes: 15,
				Description:     "Walk through herbal dosage, schedule, and warning signs.",
				Instructions:    []string{"Demonstrate dosage measurement", "Provide written schedule"},
			},
			{
				Name:            "Diet & aftercare guidance",
				DurationMinutes: 10,
				Description:     "Share cleansing diet plan, rest instructions, and contact details.",
				Instructions:    []string{"Highlight hydration goals", "Confirm support availability"},
			},
		},
	},
}

// All returns a copy of the full catalog.
func All() []model.Treatment {
	out := make([]model.Treatment, len(catalog))
	copy(out, catalog)
	return out
}

// ByID resolves a catalog entry. The second return is false for unknown
// ids.
func ByID(id string) (model.Treatment, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return model.Treatment{}, false
}

// Count reports the catalog size.
func Count() int {
	return len(catalog)
}
