package intent

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

type Vocabulary struct {
	Greetings  []string `yaml:"greetings"`
	Farming    []string `yaml:"farming"`
	NonFarming []string `yaml:"non_farming"`
	CropAction []string `yaml:"crop_action"`
	CropPlace  []string `yaml:"crop_place"`
	CropSoil   []string `yaml:"crop_soil"`
	Weather    []string `yaml:"weather"`
	Update     []string `yaml:"update"`
	Mandi      []string `yaml:"mandi"`
	Scheme     []string `yaml:"scheme"`
	Soil       []string `yaml:"soil"`
	Economics  []string `yaml:"economics"`
}

func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	for _, list := range v.lists() {
		for i, term := range *list {
			(*list)[i] = strings.ToLower(strings.TrimSpace(term))
		}
	}
	if len(v.Farming) == 0 || len(v.Greetings) == 0 {
		return nil, fmt.Errorf("parse vocabulary: greetings and farming terms are required")
	}
	return &v, nil
}

// DefaultVocabulary returns the built-in English, Hindi, Marathi and Punjabi vocabulary.
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabulary)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vocabulary) lists() []*[]string {
	return []*[]string{
		&v.Greetings, &v.Farming, &v.NonFarming,
		&v.CropAction, &v.CropPlace, &v.CropSoil,
		&v.Weather, &v.Update, &v.Mandi, &v.Scheme, &v.Soil, &v.Economics,
	}
}
