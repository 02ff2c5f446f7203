package mockws

import "fmt"

// Seed заполняет хранилище демонстрационными данными: две системы
// (TerraClass_AMZ, PRODES), маппинг между ними, форматы QGIS и SLD
// и QGIS стиль для TerraClass_AMZ.
func Seed(s *Store) error {
	terraclass, err := s.AddSystem(System{
		Name:          "TerraClass_AMZ",
		AuthorityName: "INPE",
		Description:   "Land use and land cover of deforested areas in the Legal Amazon",
		Version:       "1.0",
		Classes: []Class{
			{Name: "Vegetacao Natural", Code: "1", Description: "Natural vegetation"},
			{Name: "Floresta Primaria", Code: "1.1", Description: "Primary forest"},
			{Name: "Pastagem", Code: "2", Description: "Pasture"},
			{Name: "Agricultura Anual", Code: "3", Description: "Annual agriculture"},
		},
	})
	if err != nil {
		return fmt.Errorf("seed TerraClass_AMZ: %w", err)
	}

	// Floresta Primaria — дочерний класс Vegetacao Natural.
	if err := s.SetParent(terraclass.Name, terraclass.Classes[1].ID, terraclass.Classes[0].ID); err != nil {
		return fmt.Errorf("seed TerraClass_AMZ: %w", err)
	}

	prodes, err := s.AddSystem(System{
		Name:          "PRODES",
		AuthorityName: "INPE",
		Description:   "Amazon deforestation monitoring project",
		Version:       "2.0",
		Classes: []Class{
			{Name: "Floresta", Code: "F", Description: "Forest"},
			{Name: "Desflorestamento", Code: "D", Description: "Deforestation"},
		},
	})
	if err != nil {
		return fmt.Errorf("seed PRODES: %w", err)
	}

	similarity := 1.0
	err = s.AddMappings(terraclass.Name, prodes.Name, []Mapping{
		{
			SourceClass:        terraclass.Classes[1].Name,
			TargetClass:        prodes.Classes[0].Name,
			DegreeOfSimilarity: &similarity,
			Description:        "Primary forest is forest",
		},
		{
			SourceClass: terraclass.Classes[2].Name,
			TargetClass: prodes.Classes[1].Name,
		},
	})
	if err != nil {
		return fmt.Errorf("seed mappings: %w", err)
	}

	for _, name := range []string{"QGIS", "SLD"} {
		if _, err := s.AddStyleFormat(name); err != nil {
			return fmt.Errorf("seed style format %s: %w", name, err)
		}
	}

	qml := []byte(`<!DOCTYPE qgis><qgis version="3.16"><renderer-v2 type="categorizedSymbol"/></qgis>`)
	err = s.AddStyle(terraclass.Name, "QGIS", StyleFile{Name: "TerraClass_AMZ_QGIS.qml", Content: qml})
	if err != nil {
		return fmt.Errorf("seed style: %w", err)
	}

	return nil
}
