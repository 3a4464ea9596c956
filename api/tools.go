package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipefinder/tools"
)

type toolDescription struct {
	Name         string             `json:"name"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	InputSchema  *jsonschema.Schema `json:"inputSchema"`
	OutputSchema *jsonschema.Schema `json:"outputSchema"`
}

func (s *Server) listTools(w http.ResponseWriter, _ *http.Request) {
	list := s.registry.GetTools()
	out := make([]toolDescription, 0, len(list))
	for _, t := range list {
		out = append(out, toolDescription{
			Name:         t.Name(),
			Title:        t.Title(),
			Description:  t.Description(),
			InputSchema:  t.InputSchema(),
			OutputSchema: t.OutputSchema(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (s *Server) runTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if _, err := s.registry.GetTool(name); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	input := map[string]any{}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "tool input must be a JSON object")
		return
	}

	out, err := s.registry.Execute(r.Context(), tools.Call{Name: name, Input: input})
	if err != nil {
		status := http.StatusBadGateway
		var inErr *tools.InputError
		if errors.As(err, &inErr) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}
