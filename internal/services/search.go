package services

import (
	"log"

	"github.com/kustudyhub/kustudyhub-api/internal/config"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/meilisearch/meilisearch-go"
)

type SearchService struct {
	client *meilisearch.Client
	index  string
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure documents index exists (best effort)
	_, err := client.GetIndex("documents")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "documents",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch documents index: %v", err)
		}

		_, err = client.Index("documents").UpdateFilterableAttributes(&[]string{"unit_id", "unit_code"})
		if err != nil {
			log.Printf("Failed to update filterable attributes: %v", err)
		}

		_, err = client.Index("documents").UpdateSortableAttributes(&[]string{"created_at"})
		if err != nil {
			log.Printf("Failed to update sortable attributes: %v", err)
		}
	}

	// Ensure units index exists (best effort)
	_, err = client.GetIndex("units")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "units",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch units index: %v", err)
		}

		_, err = client.Index("units").UpdateFilterableAttributes(&[]string{"code"})
		if err != nil {
			log.Printf("Failed to update units filterable attributes: %v", err)
		}

		_, err = client.Index("units").UpdateSearchableAttributes(&[]string{"code", "title"})
		if err != nil {
			log.Printf("Failed to update units searchable attributes: %v", err)
		}
	}

	return &SearchService{
		client: client,
		index:  "documents",
	}
}

func (s *SearchService) IndexDocument(doc models.UnitDocument) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.UnitDocument{doc})
	return err
}

func (s *SearchService) IndexDocuments(docs []models.UnitDocument) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(docs)
	return err
}

func (s *SearchService) DeleteDocument(docID string) error {
	_, err := s.client.Index(s.index).DeleteDocument(docID)
	return err
}

func (s *SearchService) Search(query string, unitCode string) (*meilisearch.SearchResponse, error) {
	request := &meilisearch.SearchRequest{
		Limit: 20,
	}

	if unitCode != "" {
		request.Filter = "unit_code = " + unitCode
	}

	return s.client.Index(s.index).Search(query, request)
}

func (s *SearchService) IndexUnit(unit models.UnitProfile) error {
	_, err := s.client.Index("units").AddDocuments([]models.UnitProfile{unit})
	return err
}

func (s *SearchService) IndexUnits(units []models.UnitProfile) error {
	if len(units) == 0 {
		return nil
	}
	_, err := s.client.Index("units").AddDocuments(units)
	return err
}

func (s *SearchService) SearchUnits(query string) (*meilisearch.SearchResponse, error) {
	return s.client.Index("units").Search(query, &meilisearch.SearchRequest{Limit: 100})
}

func (s *SearchService) GetDocumentCount() (int64, error) {
	stats, err := s.client.Index(s.index).GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}
