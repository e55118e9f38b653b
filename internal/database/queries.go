package database

// Column lists shared by every projects/users query so Scan order never drifts.
const (
	UserColumns = `id, email, password_hash, created_at`

	ProjectColumns = `id, user_id, type, prompt, status, link_video, link_roteiro, link_audio, metadata, created_at, updated_at`
)

const (
	InsertUser = `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + UserColumns

	SelectUserByID = `SELECT ` + UserColumns + ` FROM users WHERE id = $1`

	SelectUserByEmail = `SELECT ` + UserColumns + ` FROM users WHERE email = $1`

	InsertProject = `
		INSERT INTO projects (id, user_id, type, prompt, status)
		VALUES ($1, $2, $3, $4, 'processing')
		RETURNING ` + ProjectColumns

	SelectProjectByID = `SELECT ` + ProjectColumns + ` FROM projects WHERE id = $1`

	SelectProjectsByOwner = `
		SELECT ` + ProjectColumns + `
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at ASC`

	SelectProjectsByStatus = `
		SELECT ` + ProjectColumns + `
		FROM projects
		WHERE status = $1 AND created_at <= $2
		ORDER BY created_at ASC`

	// UpdateProject merges: NULL parameters keep the stored value and the
	// metadata object is concatenated onto the existing one.
	UpdateProject = `
		UPDATE projects
		SET status = COALESCE($2, status),
		    link_video = COALESCE($3, link_video),
		    link_roteiro = COALESCE($4, link_roteiro),
		    link_audio = COALESCE($5, link_audio),
		    metadata = COALESCE(metadata, '{}'::jsonb) || $6::jsonb,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + ProjectColumns
)
