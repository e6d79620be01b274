package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"coverage.antennemap.fr/internal/geo"
	"coverage.antennemap.fr/internal/models"
)

// Fallback map center when a point set is empty: the geographic center of
// metropolitan France.
const (
	franceCenterLat = 46.2276
	franceCenterLon = 2.2137
)

// operatorLayer is the per-operator payload embedded into the map page.
type operatorLayer struct {
	Operator string       `json:"operator"`
	Heat     [][2]float64 `json:"heat"` // [lat, lon] pairs for the heat layer
	Hull     [][2]float64 `json:"hull"` // closed ring, [lat, lon]
}

var mapTemplate = template.Must(template.New("coverage_map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Antenna coverage</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var layersData = {{.LayersJSON}};
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], 6);
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png', {
	attribution: '&copy; OpenStreetMap contributors &copy; CARTO'
}).addTo(map);

var overlays = {};
layersData.forEach(function (layer) {
	var group = L.layerGroup();
	L.heatLayer(layer.heat, {radius: 15}).addTo(group);
	if (layer.hull && layer.hull.length > 2) {
		L.polygon(layer.hull, {color: 'red', weight: 2, fill: false}).addTo(group);
	}
	overlays[layer.operator] = group;
	group.addTo(map);
});
L.control.layers(null, overlays).addTo(map);
</script>
</body>
</html>
`))

type mapPageData struct {
	CenterLat  float64
	CenterLon  float64
	LayersJSON template.JS
}

// WriteHTMLMap renders a self-contained Leaflet page with one toggleable
// heatmap-plus-hull layer per operator.
func WriteHTMLMap(path string, result models.AnalysisResult, sets []models.OperatorPointSet) error {
	centerLat, centerLon := franceCenterLat, franceCenterLon
	if bbox, err := geo.ComputeBoundingBox(result.Points); err == nil {
		centerLat, centerLon = bbox.Center()
	}

	layers := make([]operatorLayer, 0, len(sets))
	for _, set := range sets {
		layer := operatorLayer{Operator: set.Operator, Heat: [][2]float64{}, Hull: [][2]float64{}}
		for _, p := range set.Points {
			layer.Heat = append(layer.Heat, [2]float64{p.Latitude, p.Longitude})
		}
		if hull := geo.ConvexHull(set.Points); len(hull) >= 3 {
			for _, c := range hull {
				layer.Hull = append(layer.Hull, [2]float64{c.Lat, c.Lon})
			}
			layer.Hull = append(layer.Hull, layer.Hull[0])
		}
		layers = append(layers, layer)
	}

	layersJSON, err := json.Marshal(layers)
	if err != nil {
		return fmt.Errorf("failed to marshal map layers: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return mapTemplate.Execute(f, mapPageData{
		CenterLat:  centerLat,
		CenterLon:  centerLon,
		LayersJSON: template.JS(layersJSON),
	})
}
