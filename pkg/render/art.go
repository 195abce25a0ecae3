package render

// Panel geometry. Boss panels are 29 characters wide: a one-character
// border dot on each side around a 27-character body.
const (
	panelWidth = 29
	bodyWidth  = 27

	border           = "-----------------------------"
	blankRow         = ".                           ."
	bannerFiller     = ".[                         ]."
	leaderboardWidth = 27
)

// art is one stage's rendering assets: the two-row title banner and the
// body rows revealed in proportion to the last hit.
type art struct {
	banner string
	body   []string
}

var serpentArt = art{
	banner: ".[   THE ANCIENT SERPENT   ].",
	body: []string{
		".                           .",
		".      ,===:'.,             .",
		". ,-'       `:.`---.__      .",
		".(-_          `:.     `--.  .",
		". \"#:          \\.        `..",
		".  #'   (,,(,    \\.         .",
		".    (,'     `/   \\.   ,--._.",
		".,  ,'  ,--.  `,   \\.;'     .",
		". `{D, {    \\  :    \\;      .",
		".   V,,'    /  /    //      .",
		".   j;;    /  ,' ,-//.    ,-.",
		".   \\;'   /  ,' /  _  \\  /  .",
		".         \\   `'  / \\  `'  /.",
		".          `.___,'   `.__,' .",
		".                           .",
	},
}

var woundedArt = art{
	banner: ".[SUPPLARIUS THE DRAGONLORD].",
	body: []string{
		".                           .",
		".           /           /   .",
		".  ,-'     /' .,,,,  ./     .",
		". (-_     /';'     ,/       .",
		".  \"#:   / /   ,,//,`'`     .",
		".   #'  (_,, '_,  ,,,' ``   .",
		".   #   |@\\__/@  ,,, ;\" `   .",
		". (-,  /        ,''/' `,``  .",
		".   - /   .     ./, `,, ` ; .",
		".  ,./  .   ,-,',` ,,/''\\,' .",
		". |   /; ./,,'`,,'' |   |   .",
		". |     /   ','    /    |   .",
		".  \\___/'   '     |     |   .",
		".    `,,'  |      /     `\\  .",
		".         /      |        ~\\.",
		".        '       (          .",
		".       :                   .",
		".      ; .         \\--      .",
		".    :   \\         ;        .",
	},
}

var dragonArt = art{
	banner: ".[SUPPLARIUS THE DRAGONLORD].",
	body: []string{
		".                           .",
		".                    ,-,-   .",
		".                   / / |   .",
		". ,-'             _/ / /    .",
		".(-_          _,-' `Z_/     .",
		". \"#:      ,-'_,-.    \\  _  .",
		".  #'    _(_-'_()\\     \\\" | .",
		".,--_,--'                 | .",
		". \"\"                      L-.",
		".,--^---v--v-._        /   \\.",
		". \\_________________,-'     .",
		".                  \\        .",
		".                   \\       .",
		".                    \\      .",
		".                           .",
	},
}

var whaleArt = art{
	banner: ".[      THE LEVIATHAN      ].",
	body: []string{
		".                           .",
		".                    __     .",
		".         _______ .-'  `-.  .",
		".  ,_.--'`       `'       `\\.",
		". /        o               |.",
		". \\,_                 _,--/ .",
		".    `--..__    __..-'  \\   .",
		".      |    ````    |    \\, .",
		".      \\,    v      /       .",
		".        `--..__..-'        .",
		".     ~  ~     ~   ~    ~   .",
		".  ~      ~  ~       ~      .",
		".                           .",
	},
}

// milestoneArt replaces the stage art when a million boundary is
// crossed downward. Always shown in full.
var milestoneArt = []string{
	".                           .",
	".###########################.",
	".       CRITICAL HIT        .",
	".###########################.",
	".  BOSS ENTERS NEXT STAGE!  .",
	".###########################.",
	".                           .",
	".        ,-'         ,-,-   .",
	".       (-_         / / |   .",
	". ,-'      #:     _/ / /    .",
	".(-_      #'  _,-' `Z_/     .",
	". \"#:      ,-'_,-.    \\  _  .",
	".  #'    _(XX'_XX\\     \\\" | .",
	".,--_,--'                 | .",
	". \"\"                      L-.",
	".\\------v--v-.         /   \\.",
	". --^--------/         |    .",
	". \\_________________,-'     .",
	".                           .",
}

// victoryArt replaces the stage art once the secondary boss's reading
// reaches zero. Always shown in full.
var victoryArt = []string{
	".                           .",
	".###########################.",
	".      BOSS  DEFEATED       .",
	".###########################.",
	".                           .",
	".        \\  |  /            .",
	".      .  \\ | /  .          .",
	".    --  ( WINNER )  --     .",
	".      '  / | \\  '          .",
	".        /  |  \\            .",
	".                           .",
	".THE GUILD STANDS VICTORIOUS.",
	".                           .",
}

var stageArts = map[string]art{
	"serpent": serpentArt,
	"wounded": woundedArt,
	"dragon":  dragonArt,
	"whale":   whaleArt,
}

// artFor resolves a configured stage name to its assets. Stage names
// from a tuning file that have no art fall back to the dragon so a
// config edit can never blank the panel.
func artFor(stage string) art {
	if a, ok := stageArts[stage]; ok {
		return a
	}
	return dragonArt
}
