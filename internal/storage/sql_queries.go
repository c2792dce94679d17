package storage

type SQLQuery string

const (
	// insert or update a summoner into summoners table
	upsertSummonerSQL SQLQuery = `
    INSERT INTO summoners (
        puuid, riot_summoner_id, name, region, summoner_level, profile_icon_id,
        revision_date, created_at, updated_at
    )
    VALUES ($1, $2, $3, $4, $5, $6, $7::BIGINT, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
    ON CONFLICT (puuid) DO UPDATE SET
        riot_summoner_id = EXCLUDED.riot_summoner_id,
        name = EXCLUDED.name,
        region = EXCLUDED.region,
        summoner_level = EXCLUDED.summoner_level,
        profile_icon_id = EXCLUDED.profile_icon_id,
        revision_date = EXCLUDED.revision_date,
        updated_at = CURRENT_TIMESTAMP
    RETURNING id
    `

	// store a rendered player view, replacing an older render of the same match
	upsertMatchViewSQL SQLQuery = `
    INSERT INTO match_views (match_id, puuid, region, detailed, game_creation, view, created_at)
    VALUES ($1, $2, $3, $4, $5, $6::JSONB, CURRENT_TIMESTAMP)
    ON CONFLICT (match_id, puuid, detailed) DO UPDATE SET
        view = EXCLUDED.view,
        created_at = CURRENT_TIMESTAMP
    `

	// latest rendered views of a player, most recent game first
	selectRecentMatchViewsSQL SQLQuery = `
    SELECT match_id, region, detailed, game_creation, view
    FROM match_views
    WHERE puuid = $1
    ORDER BY game_creation DESC
    LIMIT $2
    `

	selectSummonerByPUUIDSQL SQLQuery = `
    SELECT puuid, COALESCE(riot_summoner_id, ''), name, region, summoner_level, profile_icon_id, revision_date
    FROM summoners
    WHERE puuid = $1
    `
)
