package repository

import (
	"database/sql"
	"log/slog"
	"math"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/geo"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

const articleColumns = `id, title, description, url, publication_date, source_name, category, relevance_score, latitude, longitude`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Save inserts an article, returning false when an article with the same URL
// already exists.
func (r *ArticleRepository) Save(article *model.Article) (bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO articles(`+articleColumns+`)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (url) DO NOTHING
	`, article.ID, article.Title, article.Description, article.URL, article.PublicationDate,
		article.SourceName, article.Category, article.RelevanceScore, article.Latitude, article.Longitude)
	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func (r *ArticleRepository) Exists(id string) (bool, error) {
	var found bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&found)
	return found, err
}

// FetchByCategory returns the unordered candidate set for a category. The
// ranking engine owns ordering and truncation, so no ORDER BY or LIMIT here.
func (r *ArticleRepository) FetchByCategory(name string) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT `+articleColumns+` FROM articles WHERE LOWER(category) = LOWER($1)
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *ArticleRepository) FetchBySource(name string) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT `+articleColumns+` FROM articles WHERE LOWER(source_name) = LOWER($1)
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *ArticleRepository) SearchByText(terms string) ([]model.Article, error) {
	pattern := "%" + terms + "%"
	rows, err := r.db.Query(`
		SELECT `+articleColumns+` FROM articles WHERE title ILIKE $1 OR description ILIKE $1
	`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *ArticleRepository) FetchByMinScore(min float64) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT `+articleColumns+` FROM articles WHERE relevance_score >= $1
	`, min)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// FetchWithinRadius narrows with a bounding box in SQL, then applies the
// exact geodesic check. The box is padded a few percent because a degree of
// longitude shrinks toward the poles.
func (r *ArticleRepository) FetchWithinRadius(lat, lon, radiusKm float64) ([]model.Article, error) {
	const kmPerDegreeLat = 110.574

	latDelta := radiusKm / kmPerDegreeLat * 1.05
	cosLat := math.Cos(lat * math.Pi / 180)

	var rows *sql.Rows
	var err error
	lonDelta := 180.0
	if cosLat >= 0.01 {
		lonDelta = radiusKm / (111.320 * cosLat) * 1.05
	}
	if lonDelta >= 180 {
		// Near a pole, or a radius spanning every longitude: the longitude
		// clause cannot narrow anything.
		rows, err = r.db.Query(`
			SELECT `+articleColumns+` FROM articles
			WHERE latitude BETWEEN $1 AND $2
		`, lat-latDelta, lat+latDelta)
	} else if low, high, wraps := lonBounds(lon, lonDelta); wraps {
		// The box crosses the antimeridian, so the window is the union of
		// the two sides rather than a single BETWEEN.
		rows, err = r.db.Query(`
			SELECT `+articleColumns+` FROM articles
			WHERE latitude BETWEEN $1 AND $2
			  AND (longitude >= $3 OR longitude <= $4)
		`, lat-latDelta, lat+latDelta, low, high)
	} else {
		rows, err = r.db.Query(`
			SELECT `+articleColumns+` FROM articles
			WHERE latitude BETWEEN $1 AND $2
			  AND longitude BETWEEN $3 AND $4
		`, lat-latDelta, lat+latDelta, low, high)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	return filterWithinRadius(candidates, lat, lon, radiusKm), nil
}

// lonBounds returns the longitude window [lon-lonDelta, lon+lonDelta],
// normalized back into [-180, 180]. When the window crosses the antimeridian
// the third return is true and the bounds describe the disjoint predicate
// longitude >= low OR longitude <= high.
func lonBounds(lon, lonDelta float64) (low, high float64, wraps bool) {
	low, high = lon-lonDelta, lon+lonDelta
	if low < -180 {
		return low + 360, high, true
	}
	if high > 180 {
		return low, high - 360, true
	}
	return low, high, false
}

// filterWithinRadius keeps the candidates whose exact geodesic distance from
// the request point is at most radiusKm. The bounding box only prefilters;
// this check is the authority on the radius boundary.
func filterWithinRadius(candidates []model.Article, lat, lon, radiusKm float64) []model.Article {
	var within []model.Article
	for _, a := range candidates {
		km, err := geo.Distance(a.Latitude, a.Longitude, lat, lon)
		if err != nil {
			slog.Warn("skipping article with bad coordinates", "article_id", a.ID, "error", err)
			continue
		}
		if km <= radiusKm {
			within = append(within, a)
		}
	}
	return within
}

// scanArticles drains a result set, logging and skipping rows that fail to
// scan. One corrupt record must never abort a whole list.
func scanArticles(rows *sql.Rows) ([]model.Article, error) {
	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.URL, &a.PublicationDate,
			&a.SourceName, &a.Category, &a.RelevanceScore, &a.Latitude, &a.Longitude)
		if err != nil {
			slog.Warn("skipping unreadable article row", "error", err)
			continue
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}
